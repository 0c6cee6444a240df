package simulator

// Sample is a demonstration document exercising every tag.
const Sample = `<99ml>
<clr:F:4><pos:00:0C>*** TI-99/4A ***
<clr:B:4><pos:01:08>Stuart's Web Browser Demo
<clr:F:4><pos:03:00>Welcome to the 99ML Simulator!
<pos:04:00>This tool helps preview how pages
<pos:05:00>will appear on the TI-99/4A.
<clr:3:4><pos:07:00>Features:
<clr:F:4><pos:08:02>- 40x24 character display
<pos:09:02>- 16 color palette
<pos:0A:02>- Hex positioning (pos:YY:XX)
<pos:0B:02>- Color control (clr:FG:BG)
<clr:7:4><pos:0D:00>Navigation:
<clr:F:4><a href="page2.99ml" pos="0E00">Next Page</a>
<a href="index.99ml" pos="0F00">Home</a>
<a href="help.99ml" pos="1000">Help</a>
<clr:E:4><pos:16:00>────────────────────────────────────────
<clr:B:4><pos:17:0A>Created with 99ML Simulator
</99ml>`

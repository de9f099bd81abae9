// Package audiograph implements the control-API surface of the pipeline
// core. Every original C-style operation has a direct Go method; this table
// is the mapping a reader coming from the C API would want:
//
//	genesis_context_create                -> audiograph.New
//	genesis_context_destroy                -> (*Context).Close
//	genesis_context_flush_events           -> (*Context).FlushEvents
//	genesis_context_wait_events            -> (*Context).WaitEvents
//	genesis_context_wakeup                 -> (*Context).Wakeup
//	genesis_refresh_audio_devices          -> (*Context).RefreshAudioDevices
//	genesis_get_audio_device_count         -> (*Context).GetAudioDeviceCount
//	genesis_get_audio_device               -> (*Context).GetAudioDevice
//	genesis_set_audio_device_callback      -> (*Context).SetAudioDeviceCallback
//	genesis_find_node_descriptor           -> (*DescriptorContext).FindNodeDescriptor
//	genesis_create_node_descriptor         -> (*DescriptorContext).CreateNodeDescriptor
//	genesis_node_descriptor_create_node    -> (*Context).CreateNode
//	genesis_audio_device_create_node_descriptor -> (*Context).AudioDeviceCreateNodeDescriptor
//	genesis_midi_device_create_node_descriptor  -> (*Context).MidiDeviceCreateNodeDescriptor
//	genesis_connect_ports                  -> (*Context).ConnectPorts
//	genesis_context_start                  -> (*Context).Start
//	genesis_context_stop                   -> (*Context).Stop
package audiograph
